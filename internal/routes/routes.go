package routes

import (
	"net/http"
	"strings"

	bookhandler "libraryapi/internal/handlers/book"
	carthandler "libraryapi/internal/handlers/cart"
	reviewhandler "libraryapi/internal/handlers/review"
	userhandler "libraryapi/internal/handlers/user"
	"libraryapi/internal/middleware"
)

type Routes struct {
	bookHandler   *bookhandler.Handler
	cartHandler   *carthandler.Handler
	userHandler   *userhandler.Handler
	reviewHandler *reviewhandler.Handler
	roleChecker   *middleware.RoleChecker
}

func New(
	bookHandler *bookhandler.Handler,
	cartHandler *carthandler.Handler,
	userHandler *userhandler.Handler,
	reviewHandler *reviewhandler.Handler,
	roleChecker *middleware.RoleChecker,
) *Routes {
	return &Routes{
		bookHandler:   bookHandler,
		cartHandler:   cartHandler,
		userHandler:   userHandler,
		reviewHandler: reviewHandler,
		roleChecker:   roleChecker,
	}
}

func (r *Routes) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/book", r.bookCollection)
	mux.HandleFunc("/api/v1/book/", r.bookPathParser)
	mux.HandleFunc("/api/v1/cart/", r.roleChecker.RequireCartAccess("ROLE_USER", r.cartPathParser))
	mux.HandleFunc("/api/v1/user/register", r.userRegister)
	mux.HandleFunc("/api/v1/user/", r.userPathParser)
	mux.HandleFunc("/api/v1/review", r.reviewCollection)
	mux.HandleFunc("/api/v1/review/", r.reviewPathParser)
}

func (r *Routes) bookCollection(ww http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		// GET /api/v1/book?page&limit
		r.bookHandler.ListBooks(ww, req)
	case http.MethodPost:
		// POST /api/v1/book
		r.bookHandler.AddBook(ww, req)
	case http.MethodPut:
		// PUT /api/v1/book
		r.bookHandler.UpdateBook(ww, req)
	default:
		http.NotFound(ww, req)
	}
}

func (r *Routes) bookPathParser(ww http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 4 && req.Method == http.MethodGet:
		// GET /api/v1/book/{bookId}
		r.bookHandler.GetBook(ww, req)
	case len(parts) == 4 && req.Method == http.MethodDelete:
		// DELETE /api/v1/book/{bookId}
		r.bookHandler.DeleteBook(ww, req)
	case len(parts) == 5 && parts[3] == "category" && req.Method == http.MethodGet:
		// GET /api/v1/book/category/{categoryId}
		r.bookHandler.ListBooksByCategory(ww, req, parts[4])
	case len(parts) == 6 && parts[3] == "search" && parts[4] == "title" && req.Method == http.MethodGet:
		// GET /api/v1/book/search/title/{title}
		r.bookHandler.SearchBooksByTitle(ww, req, parts[5])
	default:
		http.NotFound(ww, req)
	}
}

func (r *Routes) cartPathParser(ww http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 4 && req.Method == http.MethodGet:
		// GET /api/v1/cart/{userEmail}
		r.cartHandler.GetAllCartItems(ww, req)
	case len(parts) == 5 && req.Method == http.MethodPost:
		// POST /api/v1/cart/{userEmail}/{bookId}
		r.cartHandler.AddToCart(ww, req)
	case len(parts) == 5 && req.Method == http.MethodDelete:
		// DELETE /api/v1/cart/{userEmail}/{bookId}
		r.cartHandler.RemoveFromCart(ww, req)
	case len(parts) == 6 && parts[3] == "include" && req.Method == http.MethodPost:
		// POST /api/v1/cart/include/{userEmail}/{bookId}
		r.cartHandler.ContainsCartItem(ww, req)
	default:
		http.NotFound(ww, req)
	}
}

func (r *Routes) userRegister(ww http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost {
		// POST /api/v1/user/register
		r.userHandler.Register(ww, req)
		return
	}
	http.NotFound(ww, req)
}

func (r *Routes) userPathParser(ww http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	if len(parts) == 4 && req.Method == http.MethodGet {
		// GET /api/v1/user/{email}
		r.userHandler.GetUser(ww, req)
		return
	}
	http.NotFound(ww, req)
}

func (r *Routes) reviewCollection(ww http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost {
		// POST /api/v1/review
		r.reviewHandler.AddReview(ww, req)
		return
	}
	http.NotFound(ww, req)
}

func (r *Routes) reviewPathParser(ww http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 5 && parts[3] == "book" && req.Method == http.MethodGet:
		// GET /api/v1/review/book/{bookId}
		r.reviewHandler.ListReviewsByBook(ww, req, parts[4])
	case len(parts) == 4 && req.Method == http.MethodDelete:
		// DELETE /api/v1/review/{reviewId}
		r.reviewHandler.DeleteReview(ww, req)
	default:
		http.NotFound(ww, req)
	}
}
