package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"visitor-alert-srv/internal/alert"
	"visitor-alert-srv/pkg/log"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) owns the serving lifecycle.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger
	host   string
	port   int
	mode   string

	// internalKey guards the internal trigger endpoints.
	internalKey string

	alertUC alert.UseCase
	db      *gorm.DB
}

// Config is the constructor input for HTTPServer.
// Keep this minimal: only fields really needed by HTTPServer.
type Config struct {
	Host string
	Port int
	Mode string

	InternalKey string

	AlertUseCase alert.UseCase
	DB           *gorm.DB
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		internalKey: cfg.InternalKey,
		alertUC:     cfg.AlertUseCase,
		db:          cfg.DB,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.internalKey == "" {
		return errors.New("internal key is required")
	}
	if srv.alertUC == nil {
		return errors.New("alert usecase is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}

	return nil
}
