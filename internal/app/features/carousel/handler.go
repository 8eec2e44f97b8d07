// internal/app/features/carousel/handler.go
package carousel

import (
	"context"
	"errors"
	"net/http"

	carouselstore "github.com/JayanshJR7/novara-api/internal/app/store/carousel"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the home-page carousel: a public list of active slides and
// the admin slide CRUD.
type Handler struct {
	Slides *carouselstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Slides: carouselstore.New(db),
		Log:    logger,
	}
}

type slideJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

func toSlideJSON(s models.CarouselSlide) slideJSON {
	return slideJSON{
		ID:       s.ID.Hex(),
		Title:    s.Title,
		Subtitle: s.Subtitle,
		ImageURL: s.ImageURL,
		LinkURL:  s.LinkURL,
		Position: s.Position,
		Active:   s.Active,
	}
}

type slideRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/carousel                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slides, err := h.Slides.ListActive(ctx)
	if err != nil {
		h.Log.Error("carousel load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load carousel")
		return
	}
	h.respondSlides(w, slides)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/admin/carousel                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slides, err := h.Slides.ListAll(ctx)
	if err != nil {
		h.Log.Error("carousel load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load carousel")
		return
	}
	h.respondSlides(w, slides)
}

func (h *Handler) respondSlides(w http.ResponseWriter, slides []models.CarouselSlide) {
	out := make([]slideJSON, 0, len(slides))
	for _, s := range slides {
		out = append(out, toSlideJSON(s))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"slides": out})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/admin/carousel                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req slideRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Slides.Create(ctx, models.CarouselSlide{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Active:   req.Active,
	})
	if errors.Is(err, carouselstore.ErrMissingImage) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("slide create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create slide")
		return
	}

	h.Log.Info("carousel slide created", zap.String("slide_id", created.ID.Hex()))
	respond.JSON(w, http.StatusCreated, toSlideJSON(created))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/admin/carousel/{id}                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := slideID(w, r)
	if !ok {
		return
	}

	var req slideRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Slides.Update(ctx, id, models.CarouselSlide{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Active:   req.Active,
	})
	if errors.Is(err, carouselstore.ErrSlideNotFound) {
		respond.Error(w, http.StatusNotFound, "slide not found")
		return
	}
	if err != nil {
		h.Log.Error("slide update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update slide")
		return
	}
	respond.JSON(w, http.StatusOK, toSlideJSON(updated))
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/admin/carousel/{id}                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := slideID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Slides.Delete(ctx, id)
	if err != nil {
		h.Log.Error("slide delete failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete slide")
		return
	}
	if n == 0 {
		respond.Error(w, http.StatusNotFound, "slide not found")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func slideID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid slide id")
		return primitive.NilObjectID, false
	}
	return id, true
}
