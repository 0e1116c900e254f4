// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"auralynk/database"
)

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
