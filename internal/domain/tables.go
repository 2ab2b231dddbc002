package domain

// Tables lists every model migrated at startup. Services must precede
// products so the foreign key target exists.
var Tables = []interface{}{
	// Catalog
	&Service{},
	&Product{},
	&Slide{},
	// System
	&SysOprLog{},
}
