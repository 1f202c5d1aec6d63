package digitalocean

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/digitalocean/godo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dropletform/pkg/logging"
)

// mockDropletsAPI is a testify mock for the narrow godo surface we use.
type mockDropletsAPI struct {
	mock.Mock
}

func (m *mockDropletsAPI) Create(ctx context.Context, createRequest *godo.DropletCreateRequest) (*godo.Droplet, *godo.Response, error) {
	args := m.Called(ctx, createRequest)
	droplet, _ := args.Get(0).(*godo.Droplet)
	return droplet, nil, args.Error(2)
}

func (m *mockDropletsAPI) Get(ctx context.Context, dropletID int) (*godo.Droplet, *godo.Response, error) {
	args := m.Called(ctx, dropletID)
	droplet, _ := args.Get(0).(*godo.Droplet)
	return droplet, nil, args.Error(2)
}

func (m *mockDropletsAPI) Delete(ctx context.Context, dropletID int) (*godo.Response, error) {
	args := m.Called(ctx, dropletID)
	return nil, args.Error(1)
}

func newTestService(client DropletsAPI) *DropletService {
	logger, _ := logging.NewTestLogger()
	return NewDropletServiceWithClient(client, logger)
}

func dropletWithIPs(id int, networks ...godo.NetworkV4) *godo.Droplet {
	return &godo.Droplet{
		ID:       id,
		Networks: &godo.Networks{V4: networks},
	}
}

var validAttrs = map[string]string{
	"name":   "x",
	"region": "nyc3",
	"size":   "s-1vcpu-1gb",
	"image":  "ubuntu-22-04-x64",
}

func TestCreate_MapsAttributesIntoRequest(t *testing.T) {
	client := new(mockDropletsAPI)
	client.On("Create", mock.Anything, mock.MatchedBy(func(req *godo.DropletCreateRequest) bool {
		return req.Name == "x" &&
			req.Region == "nyc3" &&
			req.Size == "s-1vcpu-1gb" &&
			req.Image.Slug == "ubuntu-22-04-x64"
	})).Return(&godo.Droplet{ID: 123}, nil, nil)

	service := newTestService(client)
	id, err := service.Create(context.Background(), validAttrs)

	require.NoError(t, err)
	assert.Equal(t, 123, id)
	client.AssertExpectations(t)
}

func TestCreate_MissingRequiredAttribute(t *testing.T) {
	for _, field := range []string{"name", "region", "size", "image"} {
		t.Run(field, func(t *testing.T) {
			attrs := map[string]string{}
			for k, v := range validAttrs {
				attrs[k] = v
			}
			delete(attrs, field)

			client := new(mockDropletsAPI)
			service := newTestService(client)

			_, err := service.Create(context.Background(), attrs)

			assert.True(t, IsErrorCategory(err, ErrInvalidInput))
			// Validation failures must never reach the remote API.
			client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_RemoteErrorClassified(t *testing.T) {
	remoteErr := &godo.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusUnauthorized},
		Message:  "Unable to authenticate you",
	}

	client := new(mockDropletsAPI)
	client.On("Create", mock.Anything, mock.Anything).Return(nil, nil, remoteErr)

	service := newTestService(client)
	_, err := service.Create(context.Background(), validAttrs)

	assert.True(t, IsErrorCategory(err, ErrUnauthorized))
}

func TestAwaitPublicIPv4_ReadyAfterSeveralChecks(t *testing.T) {
	client := new(mockDropletsAPI)
	client.On("Get", mock.Anything, 123).Return(dropletWithIPs(123), nil, nil).Twice()
	client.On("Get", mock.Anything, 123).Return(dropletWithIPs(123,
		godo.NetworkV4{Type: "private", IPAddress: "10.0.0.2"},
		godo.NetworkV4{Type: "public", IPAddress: "203.0.113.10"},
	), nil, nil).Once()

	service := newTestService(client)
	ip, err := service.AwaitPublicIPv4(context.Background(), 123, time.Millisecond, 10)

	require.NoError(t, err)
	assert.Equal(t, "203.0.113.10", ip)
	client.AssertNumberOfCalls(t, "Get", 3)
}

func TestAwaitPublicIPv4_Timeout(t *testing.T) {
	client := new(mockDropletsAPI)
	client.On("Get", mock.Anything, 123).Return(dropletWithIPs(123), nil, nil)

	service := newTestService(client)
	_, err := service.AwaitPublicIPv4(context.Background(), 123, time.Millisecond, 3)

	var timeout *PollTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 123, timeout.DropletID)
	assert.Equal(t, 3, timeout.Attempts)
	client.AssertNumberOfCalls(t, "Get", 3)
}

func TestAwaitPublicIPv4_ReadFailureIsHardError(t *testing.T) {
	remoteErr := &godo.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  "not found",
	}

	client := new(mockDropletsAPI)
	client.On("Get", mock.Anything, 123).Return(nil, nil, remoteErr).Once()

	service := newTestService(client)
	_, err := service.AwaitPublicIPv4(context.Background(), 123, time.Millisecond, 10)

	assert.True(t, IsErrorCategory(err, ErrNotFound))
	client.AssertNumberOfCalls(t, "Get", 1)
}

func TestAwaitPublicIPv4_ContextCancellation(t *testing.T) {
	client := new(mockDropletsAPI)
	client.On("Get", mock.Anything, 123).Return(dropletWithIPs(123), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := newTestService(client)
	_, err := service.AwaitPublicIPv4(ctx, 123, time.Minute, 10)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelete(t *testing.T) {
	client := new(mockDropletsAPI)
	client.On("Delete", mock.Anything, 123).Return(nil, nil)

	service := newTestService(client)
	err := service.Delete(context.Background(), 123)

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestDelete_RemoteErrorClassified(t *testing.T) {
	remoteErr := &godo.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusTooManyRequests},
		Message:  "too many requests",
	}

	client := new(mockDropletsAPI)
	client.On("Delete", mock.Anything, 123).Return(nil, remoteErr)

	service := newTestService(client)
	err := service.Delete(context.Background(), 123)

	assert.True(t, IsErrorCategory(err, ErrRateLimited))
}

func TestClassifyAPIError_NetworkError(t *testing.T) {
	err := ClassifyAPIError(assert.AnError, "123")
	assert.Equal(t, ErrInternalError, err.Category)

	err = ClassifyAPIError(errConnectionRefused{}, "123")
	assert.Equal(t, ErrNetworkError, err.Category)
}

type errConnectionRefused struct{}

func (errConnectionRefused) Error() string { return "dial tcp: connection refused" }
