package sqlite

import "github.com/mockgate/mockgate/ports"

// Stores returns the full set of entity stores backed by this database,
// sharing it as their transactor.
func (db *DB) Stores() ports.Stores {
	return ports.Stores{
		BaseEndpoints:     NewBaseEndpointStore(db),
		RelativeEndpoints: NewRelativeEndpointStore(db),
		Fields:            NewFieldStore(db),
		Schemas:           NewSchemaStore(db),
		SchemaData:        NewSchemaDataStore(db),
		Tx:                db,
	}
}
