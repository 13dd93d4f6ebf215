package listing

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/pkg/clients"
)

// Inventory is the listing-availability collaborator. Reserve marks a
// listing unavailable before the escrow hold is taken; Release returns it
// to the market on refund or cancel.
type Inventory interface {
	Reserve(ctx context.Context, listingID int) error
	Release(ctx context.Context, listingID int) error
}

type Client struct {
	url    string
	client clients.HTTPClientI
}

func NewClient(url string, client clients.HTTPClientI) *Client {
	return &Client{
		url:    url,
		client: client,
	}
}

func (c *Client) Reserve(ctx context.Context, listingID int) error {
	status, err := c.post(ctx, listingID, "reserve")
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return fmt.Errorf("listing inventory returned status %d", status)
	}
}

func (c *Client) Release(ctx context.Context, listingID int) error {
	status, err := c.post(ctx, listingID, "release")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		zap.L().Warn("listing release rejected", zap.Int("listingID", listingID), zap.Int("status", status))
		return fmt.Errorf("listing inventory returned status %d", status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, listingID int, action string) (int, error) {
	url := c.url + "/api/listings/" + strconv.Itoa(listingID) + "/" + action
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
