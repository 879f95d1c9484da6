// Package services contains domain services operating on workspace documents.
package services

import "github.com/reglet-dev/envseal/internal/domain/entities"

// SecretLocator enumerates secret-bearing fields of environment resources.
type SecretLocator struct{}

// NewSecretLocator creates a new secret locator.
func NewSecretLocator() *SecretLocator {
	return &SecretLocator{}
}

// Locate returns one LocatedSecret per secret field, in resource order and,
// within a resource, in data field order.
// The marker key is resolved once per environment.
func (l *SecretLocator) Locate(doc *entities.Document) []entities.LocatedSecret {
	var secrets []entities.LocatedSecret

	for _, env := range doc.Environments() {
		markerKey := env.MarkerKey()

		for _, name := range env.FieldNames() {
			raw, _ := env.Field(name)
			fv := entities.ClassifyField(raw, markerKey)
			if !fv.IsSecret() {
				continue
			}

			secrets = append(secrets, entities.LocatedSecret{
				EnvID:      env.ID(),
				EnvName:    env.Name(),
				EnvSortKey: env.SortKey(),
				Field:      name,
				Value:      fv.Secret(),
			})
		}
	}

	return secrets
}
