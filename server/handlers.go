package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/novotemporh/cartaz/binding"
	"github.com/novotemporh/cartaz/framing"
	"github.com/novotemporh/cartaz/pipeline"
	"github.com/novotemporh/cartaz/poster"
	canvasrenderer "github.com/novotemporh/cartaz/renderer/canvas"
	"github.com/novotemporh/cartaz/share"
	"github.com/novotemporh/cartaz/store"
	"github.com/novotemporh/cartaz/templates"
)

// GET /api/templates
func (s *Server) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": templates.List()})
}

// POST /api/posters/render?template=&card=
func (s *Server) renderPoster(c *gin.Context) {
	var p poster.PosterData
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err.Error())
		return
	}
	name := templates.ForPoster(p, c.Query("card") == "true")
	if q := c.Query("template"); q != "" {
		name = q
	}
	s.writePNG(c, name, templates.SingleContent(p), templates.Single)
}

// POST /api/posters/compiled/render
func (s *Server) renderCompiled(c *gin.Context) {
	var cp poster.CompiledPosterData
	if err := c.ShouldBindJSON(&cp); err != nil {
		badRequest(c, err.Error())
		return
	}
	name, err := templates.ForCompiled(cp)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	s.writePNG(c, name, templates.CompiledContent(cp), templates.Compiled)
}

// posterRequest carries either record kind; preview and share use it.
type posterRequest struct {
	Template string                     `json:"template"`
	Card     bool                       `json:"card"`
	Poster   *poster.PosterData         `json:"poster"`
	Compiled *poster.CompiledPosterData `json:"compiled"`
}

// resolve picks the template and content of req.
func (req posterRequest) resolve() (string, templates.Content, templates.Kind, error) {
	switch {
	case req.Poster != nil && req.Compiled != nil:
		return "", templates.Content{}, 0, errors.New("send either poster or compiled, not both")
	case req.Poster != nil:
		name := templates.ForPoster(*req.Poster, req.Card)
		if req.Template != "" {
			name = req.Template
		}
		return name, templates.SingleContent(*req.Poster), templates.Single, nil
	case req.Compiled != nil:
		name, err := templates.ForCompiled(*req.Compiled)
		if err != nil {
			return "", templates.Content{}, 0, err
		}
		if req.Template != "" {
			name = req.Template
		}
		return name, templates.CompiledContent(*req.Compiled), templates.Compiled, nil
	default:
		return "", templates.Content{}, 0, errors.New("poster or compiled is required")
	}
}

// POST /api/previews/:session
func (s *Server) preview(c *gin.Context) {
	var req posterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	name, content, kind, err := req.resolve()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := checkTemplate(name, kind); err != nil {
		badRequest(c, err.Error())
		return
	}

	session := c.Param("session")
	data, err := s.previews.Run(c.Request.Context(), session, func(ctx context.Context) ([]byte, error) {
		return s.render(ctx, name, content)
	})
	switch {
	case errors.Is(err, pipeline.ErrSuperseded):
		conflict(c, "superseded by a newer preview")
	case err != nil:
		loggerFrom(c).Error("preview failed", "session", session, "template", name, "err", err)
		internal(c, "render failed")
	default:
		pngData(c, data)
	}
}

// DELETE /api/previews/:session
func (s *Server) closePreview(c *gin.Context) {
	s.previews.Forget(c.Param("session"))
	c.Status(http.StatusNoContent)
}

// POST /api/posters/share
func (s *Server) sharePoster(c *gin.Context) {
	if s.deps.Sharer == nil {
		unavailable(c, "sharing is disabled")
		return
	}
	var req posterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	name, content, kind, err := req.resolve()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := checkTemplate(name, kind); err != nil {
		badRequest(c, err.Error())
		return
	}

	var (
		invalid error
		caption binding.Caption
		label   string
	)
	if req.Poster != nil {
		invalid = req.Poster.Validate()
		caption = s.deps.Caption.Fill(poster.CaptionData(*req.Poster))
		label = strings.TrimSpace(name + "-" + strings.TrimSpace(req.Poster.Code))
	} else {
		invalid = req.Compiled.Validate()
		caption = s.deps.CompiledCaption.Fill(poster.CompiledCaptionData(*req.Compiled))
		label = name
	}
	if invalid != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "poster is not ready to share",
			"problems": strings.Split(invalid.Error(), "\n"),
		})
		return
	}

	data, err := s.render(c.Request.Context(), name, content)
	if err != nil {
		loggerFrom(c).Error("render for share failed", "template", name, "err", err)
		internal(c, "render failed")
		return
	}
	receipt, err := s.deps.Sharer.Share(c.Request.Context(), share.Request{Label: label, PNG: data, Caption: caption})
	if err != nil {
		loggerFrom(c).Error("share failed", "target", s.deps.Sharer.Name(), "err", err)
		badGateway(c, "share failed")
		return
	}
	loggerFrom(c).Info("poster shared", "target", receipt.Target, "key", receipt.Key, "fallback", receipt.Fallback)
	c.JSON(http.StatusOK, receipt)
}

type framingRequest struct {
	Image     poster.ImageSource `json:"image"`
	BoxWidth  int                `json:"boxWidth"`
	BoxHeight int                `json:"boxHeight"`
	PanX      float64            `json:"panX"`
	PanY      float64            `json:"panY"`
	Zoom      float64            `json:"zoom"`
}

// POST /api/framing: zoom applies about the box centre, then the pan.
func (s *Server) frame(c *gin.Context) {
	var req framingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	img, err := s.deps.Loader.Load(c.Request.Context(), req.Image)
	if err != nil {
		badRequest(c, fmt.Sprintf("image: %v", err))
		return
	}
	f, err := framing.New(img, req.BoxWidth, req.BoxHeight)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Zoom != 0 {
		f.SetZoom(req.Zoom)
	}
	f.Pan(req.PanX, req.PanY)
	data, err := f.BakePNG()
	if err != nil {
		internal(c, err.Error())
		return
	}
	pngData(c, data)
}

// POST /api/requests
func (s *Server) createRequest(c *gin.Context) {
	if s.deps.Store == nil {
		unavailable(c, "request store is disabled")
		return
	}
	var r poster.RequestRecord
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := poster.FromRecord(r); err != nil {
		badRequest(c, err.Error())
		return
	}
	saved, err := s.deps.Store.Save(c.Request.Context(), r)
	if err != nil {
		loggerFrom(c).Error("save request failed", "err", err)
		internal(c, "failed to save request")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GET /api/requests?limit=
func (s *Server) listRequests(c *gin.Context) {
	if s.deps.Store == nil {
		unavailable(c, "request store is disabled")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	list, err := s.deps.Store.List(c.Request.Context(), limit)
	if err != nil {
		loggerFrom(c).Error("list requests failed", "err", err)
		internal(c, "failed to list requests")
		return
	}
	if list == nil {
		list = []poster.RequestRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

// GET /api/requests/:id
func (s *Server) getRequest(c *gin.Context) {
	r, ok := s.loadRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

// GET /api/requests/:id/poster?card=
func (s *Server) requestPoster(c *gin.Context) {
	r, ok := s.loadRequest(c)
	if !ok {
		return
	}
	p, err := poster.FromRecord(r)
	if err != nil {
		internal(c, err.Error())
		return
	}
	name := templates.ForPoster(p, c.Query("card") == "true")
	s.writePNG(c, name, templates.SingleContent(p), templates.Single)
}

func (s *Server) loadRequest(c *gin.Context) (poster.RequestRecord, bool) {
	if s.deps.Store == nil {
		unavailable(c, "request store is disabled")
		return poster.RequestRecord{}, false
	}
	r, err := s.deps.Store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		notFound(c, "request not found")
		return r, false
	}
	if err != nil {
		loggerFrom(c).Error("load request failed", "err", err)
		internal(c, "failed to load request")
		return r, false
	}
	return r, true
}

func (s *Server) writePNG(c *gin.Context, name string, content templates.Content, kind templates.Kind) {
	if err := checkTemplate(name, kind); err != nil {
		badRequest(c, err.Error())
		return
	}
	data, err := s.render(c.Request.Context(), name, content)
	if err != nil {
		loggerFrom(c).Error("render failed", "template", name, "err", err)
		internal(c, "render failed")
		return
	}
	pngData(c, data)
}

func (s *Server) render(ctx context.Context, name string, content templates.Content) ([]byte, error) {
	img, err := s.deps.Engine.Render(ctx, name, content)
	if err != nil {
		return nil, err
	}
	return canvasrenderer.EncodePNG(img)
}

// checkTemplate rejects unknown names and templates of the other kind.
func checkTemplate(name string, kind templates.Kind) error {
	l, err := templates.Lookup(name)
	if err != nil {
		return err
	}
	if l.Kind != kind {
		return fmt.Errorf("template %q renders %s posters", name, l.Kind)
	}
	return nil
}
