package config

type Mount struct {
	Capacity int `env:"CAPACITY,expand" envDefault:"8"`
	// Table maps mount points to backend DSNs, ie
	// MOUNTNS_MOUNT_TABLE="/=memory://root;/data=local:///srv/data"
	Table map[string]string `env:"TABLE" envSeparator:";" envKeyValSeparator:"="`
}
