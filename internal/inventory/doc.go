// Package inventory persists the reconciled device inventory.
//
// Records are keyed by the stable device ID each device reports about
// itself - never by IP, which changes with DHCP leases. The Store
// interface keeps the sync engine independent of the backing
// implementation; FileStore is the YAML-file implementation used by the
// CLI, stored next to the tool's configuration.
//
// # Usage Example
//
//	store, err := inventory.NewFileStore(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	record, err := store.Upsert(inventory.Record{
//	    DeviceID: "9884E3AB1234",
//	    IP:       "192.168.1.100",
//	    Name:     "Living Room",
//	    LastSeen: time.Now(),
//	})
//
// # Thread Safety
//
// FileStore serializes all operations behind an internal mutex, and every
// write lands atomically via a temp-file rename.
package inventory
