package stores

import (
	"os"

	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/KhadeerBasha1232/letter-backend/stores/filesystem"
	"github.com/KhadeerBasha1232/letter-backend/stores/memory"
	"github.com/KhadeerBasha1232/letter-backend/stores/sqlite"
	"github.com/sirupsen/logrus"
)

func GetStore() core.LetterStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.LetterStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "filesystem":
		basePath := os.Getenv("LOCAL_STORAGE_PATH")
		if basePath == "" {
			basePath = "./data" // Default path
		}
		storageField["basePath"] = basePath
		store = filesystem.NewStore(basePath)
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "letters.db" // Default filename
		}
		storageField["dataSourceName"] = dataSourceName
		store = sqlite.NewStore(dataSourceName)
	default:
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	}
	logrus.WithFields(storageField).Info("Use storage")
	return store
}
