package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus is the occupancy/admin status of a room.
// OCCUPIED is derived from the existence of an ACTIVE allocation and is
// never set by hand; the other three are admin-managed.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomReserved    RoomStatus = "RESERVED"
)

// RoomType is the category of a room
type RoomType string

const (
	RoomSingle           RoomType = "SINGLE"
	RoomDouble           RoomType = "DOUBLE"
	RoomTriple           RoomType = "TRIPLE"
	RoomSuite            RoomType = "SUITE"
	RoomICU              RoomType = "ICU"
	RoomEmergency        RoomType = "EMERGENCY"
	RoomOperationTheatre RoomType = "OPERATION_THEATRE"
	RoomWard             RoomType = "WARD"
)

// Room represents a hospital room that patients can be allocated to
type Room struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	RoomNumber  string          `gorm:"size:50;uniqueIndex;not null" json:"room_number"`
	RoomType    RoomType        `gorm:"type:enum('SINGLE','DOUBLE','TRIPLE','SUITE','ICU','EMERGENCY','OPERATION_THEATRE','WARD');default:'SINGLE'" json:"room_type"`
	Floor       int             `gorm:"default:0" json:"floor"`
	Capacity    int             `gorm:"default:1" json:"capacity"`
	Status      RoomStatus      `gorm:"type:enum('AVAILABLE','OCCUPIED','MAINTENANCE','RESERVED');default:'AVAILABLE'" json:"status"`
	PricePerDay decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_day"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "rooms"
}
