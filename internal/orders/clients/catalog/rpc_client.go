package catalog

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Wire types mirroring the catalog service's RPC contract: string ids,
// decimal prices as strings, RFC3339 timestamps.

type rpcGetProductArgs struct {
	ID string `json:"id"`
}

type rpcListProductsArgs struct{}

type rpcProductDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type rpcGetProductReply struct {
	Found   bool           `json:"found"`
	Product *rpcProductDTO `json:"product,omitempty"`
}

type rpcListProductsReply struct {
	Products []rpcProductDTO `json:"products"`
}

type rpcClient struct {
	addr    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRPCClient talks to the catalog service's RPC endpoint, dialing a fresh
// connection per call.
func NewRPCClient(addr string, timeout time.Duration, l *zap.Logger) Client {
	return &rpcClient{
		addr:    addr,
		timeout: timeout,
		logger:  l.With(zap.String("component", "CatalogRPCClient")),
	}
}

func (c *rpcClient) GetProduct(ctx context.Context, id uuid.UUID) (*Product, bool) {
	var reply rpcGetProductReply
	if err := c.call(ctx, "Catalog.GetProduct", rpcGetProductArgs{ID: id.String()}, &reply); err != nil {
		c.logger.Warn("Catalog RPC call failed", zap.String("product_id", id.String()), zap.Error(err))
		return nil, false
	}
	if !reply.Found || reply.Product == nil {
		return nil, false
	}

	product, err := mapRPCDTO(*reply.Product)
	if err != nil {
		c.logger.Warn("Malformed product in catalog RPC reply", zap.String("product_id", id.String()), zap.Error(err))
		return nil, false
	}
	return product, true
}

func (c *rpcClient) GetAvailableProducts(ctx context.Context) []Product {
	var reply rpcListProductsReply
	if err := c.call(ctx, "Catalog.ListProducts", rpcListProductsArgs{}, &reply); err != nil {
		c.logger.Warn("Catalog RPC list call failed", zap.Error(err))
		return []Product{}
	}

	products := make([]Product, 0, len(reply.Products))
	for _, dto := range reply.Products {
		if dto.Stock <= 0 {
			continue
		}
		product, err := mapRPCDTO(dto)
		if err != nil {
			c.logger.Warn("Skipping malformed product in catalog RPC reply", zap.String("product_id", dto.ID), zap.Error(err))
			continue
		}
		products = append(products, *product)
	}
	return products
}

func (c *rpcClient) call(ctx context.Context, method string, args, reply any) error {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return ctx.Err()
	}

	conn, err := net.DialTimeout("tcp", c.addr, timeout)
	if err != nil {
		return fmt.Errorf("failed to dial catalog RPC endpoint %s: %w", c.addr, err)
	}
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set RPC deadline: %w", err)
	}

	client := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	defer client.Close()

	select {
	case call := <-client.Go(method, args, reply, make(chan *rpc.Call, 1)).Done:
		if call.Error != nil {
			return fmt.Errorf("catalog RPC %s failed: %w", method, call.Error)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func mapRPCDTO(dto rpcProductDTO) (*Product, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", dto.ID, err)
	}
	price, err := decimal.NewFromString(dto.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid product price %q: %w", dto.Price, err)
	}
	return &Product{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       price,
		Stock:       dto.Stock,
	}, nil
}
