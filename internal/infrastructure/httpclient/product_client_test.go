package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/infrastructure/httpclient"
)

func TestProductClient_GetByIDSucesso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/produto-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"produto-1","name":"Arroz 5kg","price":"24.90"}`))
	}))
	defer srv.Close()

	client := httpclient.NewProductClient(srv.URL, 2*time.Second, 0)
	product, err := client.GetByID(context.Background(), "produto-1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Arroz 5kg", product.Name)
}

// 404 do product-service significa "não existe", não erro.
func TestProductClient_GetByIDNaoEncontrado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := httpclient.NewProductClient(srv.URL, 2*time.Second, 0)
	product, err := client.GetByID(context.Background(), "fantasma")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductClient_ErroDoServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := httpclient.NewProductClient(srv.URL, 2*time.Second, 0)
	_, err := client.GetByID(context.Background(), "produto-1")
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}
