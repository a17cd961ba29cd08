// Package api exposes the HTTP upload surface: a liveness index and a
// multipart image upload endpoint backed by the object store.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/dataplatform-io/dynoshift/internal/etl"
	"github.com/dataplatform-io/dynoshift/pkg/logger"
)

// StoreProvider builds the object store the upload handler writes to.
// It is invoked lazily on the first upload, so the process starts (and the
// index endpoint serves) even before credentials are resolvable. It may be
// invoked again after a failed construction.
type StoreProvider func() (etl.ObjectStore, error)

// API represents the REST API for image uploads.
type API struct {
	router   *gin.Engine
	provider StoreProvider
	bucket   string

	mu    sync.Mutex
	store etl.ObjectStore
}

// NewAPI creates a new API instance
func NewAPI(provider StoreProvider, bucket string) *API {
	api := &API{
		router:   gin.Default(),
		provider: provider,
		bucket:   bucket,
	}
	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	a.router.GET("/", a.index)
	a.router.POST("/upload_image", a.uploadImage)
}

func (a *API) index(c *gin.Context) {
	c.String(http.StatusOK, "Hello World")
}

func (a *API) uploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image upload failed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image upload failed"})
		return
	}
	defer src.Close()

	store, err := a.objectStore()
	if err != nil {
		logger.Errorf("Failed to build object store: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image upload failed"})
		return
	}

	if err := store.Put(a.bucket, file.Filename, src, file.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Image uploaded successfully"})
}

// objectStore caches the provider's result on success only, so a transient
// construction failure is retried on the next upload instead of sticking
// for the process lifetime.
func (a *API) objectStore() (etl.ObjectStore, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	store, err := a.provider()
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// Router exposes the gin engine, mainly for tests.
func (a *API) Router() *gin.Engine {
	return a.router
}

// Run starts the API server and blocks.
func (a *API) Run(addr string) error {
	logger.Infof("Starting upload API on %s", addr)
	return a.router.Run(addr)
}
