package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"go.uber.org/zap"

	"storefront/internal/catalog/app/catalog"
)

const callTimeout = 5 * time.Second

// Catalog is the RPC receiver exposed to downstream services. It offers the
// two read operations of the catalog over a JSON-RPC connection per call.
type Catalog struct {
	service catalog.CatalogService
	logger  *zap.Logger
}

func (c *Catalog) GetProduct(args GetProductArgs, reply *GetProductReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	res, err := c.service.GetProduct(ctx, args.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			reply.Found = false
			return nil
		}
		if errors.Is(err, catalog.ErrInvalidProduct) {
			return fmt.Errorf("invalid product id: %s", args.ID)
		}
		c.logger.Error("RPC GetProduct failed", zap.String("product_id", args.ID), zap.Error(err))
		return errors.New("internal server error")
	}

	dto := mapResponseToDTO(res)
	reply.Found = true
	reply.Product = &dto
	return nil
}

func (c *Catalog) ListProducts(args ListProductsArgs, reply *ListProductsReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	res, err := c.service.ListProducts(ctx, 1, catalog.MaxPageSize)
	if err != nil {
		c.logger.Error("RPC ListProducts failed", zap.Error(err))
		return errors.New("internal server error")
	}

	reply.Products = make([]ProductDTO, len(res.Items))
	for i, item := range res.Items {
		reply.Products[i] = mapResponseToDTO(item)
	}
	return nil
}

// Server accepts JSON-RPC connections for the Catalog receiver until its
// context is cancelled.
type Server struct {
	addr    string
	catalog *Catalog
	logger  *zap.Logger
}

func NewServer(addr string, service catalog.CatalogService, l *zap.Logger) *Server {
	logger := l.With(zap.String("component", "CatalogRPCServer"))
	return &Server{
		addr:    addr,
		catalog: &Catalog{service: service, logger: logger},
		logger:  logger,
	}
}

func (s *Server) Serve(ctx context.Context) error {
	srv := rpc.NewServer()
	if err := srv.RegisterName("Catalog", s.catalog); err != nil {
		return fmt.Errorf("failed to register RPC receiver: %w", err)
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("Catalog RPC server listening", zap.String("addr", s.addr))
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("Catalog RPC server stopped")
				return nil
			}
			s.logger.Error("Failed to accept RPC connection", zap.Error(err))
			continue
		}
		go srv.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}
