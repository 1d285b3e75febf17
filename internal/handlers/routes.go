package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all short link routes.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-link",
		Method:        http.MethodPost,
		Path:          "/links",
		Summary:       "Create short link",
		Description:   "Creates a short link with a random hash that no live link owns.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, linkHandler.CreateLink)

	huma.Register(api, huma.Operation{
		OperationID: "get-link",
		Method:      http.MethodGet,
		Path:        "/links/{hash}",
		Summary:     "Get short link",
		Description: "Returns the metadata of a live short link.",
		Tags:        []string{"Links"},
	}, linkHandler.GetLink)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{hash}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the URL behind the hash. Expired links are not found.",
		Tags:        []string{"Links"},
	}, linkHandler.RedirectToURL)
}
