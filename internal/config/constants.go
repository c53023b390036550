package config

import "os"

// Named database connections
const (
	DatabaseSupergene = "supergene"
	DatabaseLocal     = "local"
)

const (
	// DefaultSupergeneURI is used when SUPERGENE is not set
	DefaultSupergeneURI = "sqlite://./data/supergene.db"

	// DefaultLocalURI is used when LOCALDB is not set
	DefaultLocalURI = "sqlite://./data/local.db"

	DefaultLogDir = "./logs"

	DefaultDirMode os.FileMode = 0o755
)
