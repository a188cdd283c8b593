package storage

import "treehouse-importer/models"

// PropertyStore is the interface any persistence backend must satisfy.
type PropertyStore interface {
	Save(p *models.Property) error
	FetchAll() ([]*models.Property, error)
	FetchByOwner(ownerID string) ([]*models.Property, error)
	Close() error
}
