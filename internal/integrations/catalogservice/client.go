package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService (каталог туров и трансферов).
// Движок инвентаря читает пакеты, но никогда их не изменяет.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPackage получает пакет каталога по типу и ID.
// Леджер вызывает этот метод в момент мутации, чтобы видеть актуальный
// minimum_person_default, а не закэшированное значение.
func (c *Client) GetPackage(ctx context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error) {
	url := fmt.Sprintf("%s/internal/packages/%s/%d", c.baseURL, packageType, packageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid package reference", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPackageNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var dto packageDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return dto.toDomain()
}

// ListActivePackages получает ссылки на все активные пакеты каталога.
// Используется фоновым сопровождением горизонта.
func (c *Client) ListActivePackages(ctx context.Context) ([]domain.PackageRef, error) {
	url := fmt.Sprintf("%s/internal/packages?active=true", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var dtos []packageRefDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	refs := make([]domain.PackageRef, 0, len(dtos))
	for _, dto := range dtos {
		packageType, err := domain.ParsePackageType(dto.PackageType)
		if err != nil {
			c.log.Warn("ListActivePackages: skipping package with invalid type %q (id=%d)", dto.PackageType, dto.ID)
			continue
		}
		refs = append(refs, domain.PackageRef{Type: packageType, ID: dto.ID})
	}

	return refs, nil
}
