package mongodb

import (
	"errors"

	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// translateErr maps driver errors onto the repository sentinel errors so
// callers never match on mongo error values.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}
