package schema

import "gorm.io/gorm"

// Models returns all schema models in migration order.
func Models() []any {
	return []any{
		&Person{},
		&Institution{},
		&Ort{},
		&Ereignis{},
		&Werk{},
		&Preis{},
		&Religion{},
		&Fach{},
		&Beruf{},
		&Uri{},
		&Bild{},
		&Relation{},
		&RelationActor{},
	}
}

// Migrate creates or updates all tables using GORM AutoMigrate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
