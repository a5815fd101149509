package brainapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// QRImage is a fetched QR code image plus its content type.
type QRImage struct {
	Data        []byte
	ContentType string
}

// DataURL returns a data: URI so templates can embed or link the image
// without another round trip.
func (q QRImage) DataURL() string {
	ct := q.ContentType
	if ct == "" {
		ct = "image/png"
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(q.Data)
}

// NodeQRCode fetches the charging QR code for a node. The endpoint returns
// binary image content, so errors carry the HTTP status text rather than a
// decoded detail message.
func (c *Client) NodeQRCode(ctx context.Context, nodeID string) (QRImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/qr/node/"+url.PathEscape(nodeID), nil)
	if err != nil {
		return QRImage{}, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("qr code request failed", zap.String("node_id", nodeID), zap.Error(err))
		return QRImage{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return QRImage{}, &APIError{
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("failed to fetch QR code: %s", http.StatusText(resp.StatusCode)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return QRImage{}, &NetworkError{Err: err}
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "image/png"
	}
	return QRImage{Data: data, ContentType: ct}, nil
}
