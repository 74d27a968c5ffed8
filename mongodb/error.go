package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrItemNotFound not found
var ErrItemNotFound = errors.New("mongodb: item not found")

func mgoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrItemNotFound
	default:
		return fmt.Errorf("mongodb error: %w", err)
	}
}
