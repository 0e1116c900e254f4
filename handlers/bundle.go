// File: auralynk/handlers/bundle.go
package handlers

import (
	userRepoPkg "auralynk/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc

	// Profile endpoints
	GetMeHandler       gin.HandlerFunc
	UpdateMeHandler    gin.HandlerFunc
	SetFCMTokenHandler gin.HandlerFunc

	// Reader feed endpoints
	FeedHandler      gin.HandlerFunc
	GetReaderHandler gin.HandlerFunc

	// Availability endpoints
	ListSlotsHandler  gin.HandlerFunc
	AddSlotHandler    gin.HandlerFunc
	RemoveSlotHandler gin.HandlerFunc

	// Booking endpoints
	RequestBookingHandler gin.HandlerFunc
	ListBookingsHandler   gin.HandlerFunc
	AcceptBookingHandler  gin.HandlerFunc
	RejectBookingHandler  gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc

	// Confirmation and session endpoints
	ConfirmHandler     gin.HandlerFunc
	JoinSessionHandler gin.HandlerFunc

	// Live availability stream
	LiveHandler gin.HandlerFunc
}
