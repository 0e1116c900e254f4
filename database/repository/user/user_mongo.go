// File: database/repository/user/user_mongo.go
package userRepo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"auralynk/database"
)

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{
		coll: database.DB().Collection("users"),
	}
}
