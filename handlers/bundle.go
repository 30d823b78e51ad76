package handlers

import (
	userRepo "tourbook/database/repository/user"
)

// HandlerBundle collects every handler the router needs, plus the user
// repository the auth middleware validates tokens against.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Auth        *AuthHandler
	School      *SchoolHandler
	Booking     *BookingHandler
	SchoolAdmin *SchoolAdminHandler
	SystemAdmin *SystemAdminHandler
	Messaging   *MessagingHandler
}
