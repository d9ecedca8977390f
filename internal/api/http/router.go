// Package http wires the REST surface consumed by the counter UI.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"cyclerent-backend/internal/security"
	"cyclerent-backend/internal/service"
	"cyclerent-backend/internal/storage"
)

// NewRouter assembles all API routes. Login, refresh and the presigned
// upload/download endpoints are public; everything else requires an
// operator token.
func NewRouter(
	authSvc service.AuthService,
	contractSvc service.ContractService,
	catalogSvc service.CatalogService,
	documentSvc service.DocumentService,
	tokens security.TokenManager,
	store storage.StorageInterface,
) *mux.Router {
	router := mux.NewRouter()

	authHandler := NewAuthHandler(authSvc)
	contractHandler := NewContractHandler(contractSvc)
	catalogHandler := NewCatalogHandler(catalogSvc)
	documentHandler := NewDocumentHandler(documentSvc, store)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/upload/{token}", documentHandler.HandleUpload).Methods(http.MethodPut)
	api.HandleFunc("/download/{key}", documentHandler.HandleDownload).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	protected.HandleFunc("/contracts", contractHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/contracts", contractHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/contracts/{id}", contractHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/contracts/{id}/bill", contractHandler.Bill).Methods(http.MethodGet)
	protected.HandleFunc("/contracts/{id}/items", contractHandler.AddItem).Methods(http.MethodPost)
	protected.HandleFunc("/contracts/{id}/items/{index}/price", contractHandler.OverrideItemPrice).Methods(http.MethodPut)
	protected.HandleFunc("/contracts/{id}/return", contractHandler.Return).Methods(http.MethodPost)
	protected.HandleFunc("/contracts/{id}/substitute", contractHandler.Substitute).Methods(http.MethodPost)
	protected.HandleFunc("/contracts/{id}/complete-payment", contractHandler.CompletePayment).Methods(http.MethodPost)
	protected.HandleFunc("/contracts/{id}/cancel", contractHandler.Cancel).Methods(http.MethodPost)

	protected.HandleFunc("/contracts/{id}/documents", documentHandler.IssueUploadURL).Methods(http.MethodPost)
	protected.HandleFunc("/contracts/{id}/documents/confirm", documentHandler.ConfirmUpload).Methods(http.MethodPost)
	protected.HandleFunc("/documents/url", documentHandler.DownloadURL).Methods(http.MethodGet)

	protected.HandleFunc("/catalog", catalogHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/catalog", catalogHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/catalog/barcode/{code}", catalogHandler.GetByBarcode).Methods(http.MethodGet)
	protected.HandleFunc("/catalog/{id}", catalogHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/catalog/{id}", catalogHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/catalog/{id}/retire", catalogHandler.Retire).Methods(http.MethodPost)

	return router
}
