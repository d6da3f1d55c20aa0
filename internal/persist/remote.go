package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Remote 通过另一个实例的文档 API 读写周期文档
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote 构造远端提供方，baseURL 形如 http://host:port
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (r *Remote) documentURL(periodKey string) string {
	return r.baseURL + "/api/documents/" + url.PathEscape(periodKey)
}

// Load 从远端读取文档，404 视为不存在
func (r *Remote) Load(periodKey string) (json.RawMessage, bool, error) {
	resp, err := r.client.Get(r.documentURL(periodKey))
	if err != nil {
		return nil, false, fmt.Errorf("%w: remote load %s: %v", ErrPersistence, periodKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%w: remote load %s: status %d", ErrPersistence, periodKey, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("%w: remote load %s: %v", ErrPersistence, periodKey, err)
	}
	return json.RawMessage(body), true, nil
}

// Save 将文档整体推送到远端
func (r *Remote) Save(periodKey string, document any) error {
	payload, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("%w: marshal document %s: %v", ErrPersistence, periodKey, err)
	}

	req, err := http.NewRequest(http.MethodPut, r.documentURL(periodKey), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: remote save %s: %v", ErrPersistence, periodKey, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: remote save %s: %v", ErrPersistence, periodKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: remote save %s: status %d", ErrPersistence, periodKey, resp.StatusCode)
	}
	return nil
}
