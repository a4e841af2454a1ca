package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
)

// readMultipart rebuilds an incoming multipart form as plain fields and
// in-memory files, so the upstream call can be retried against candidate
// paths and gets a fresh boundary each time.
func readMultipart(c *gin.Context) (map[string]string, []upstream.FormFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	values := make(map[string]string, len(form.Value))
	for key, vs := range form.Value {
		if len(vs) > 0 {
			values[key] = vs[0]
		}
	}

	var files []upstream.FormFile
	for field, headers := range form.File {
		for _, fh := range headers {
			data, err := readFormFile(fh)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, upstream.FormFile{
				Field:       field,
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	return values, files, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}

// relayUpload builds a multipart-forwarding handler for one or more
// candidate upstream paths.
func (a *API) relayUpload(operation string, candidates func(*gin.Context) []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := a.requireToken(c)
		if !ok {
			return
		}

		values, files, err := readMultipart(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Form upload tidak valid."})
			return
		}

		a.forward(c, upstream.Request{
			Operation:  operation,
			Method:     http.MethodPost,
			Candidates: candidates(c),
			Token:      token,
			FormValues: values,
			FormFiles:  files,
		})
	}
}

// registerProfile wires the account endpoints.
func (a *API) registerProfile(r gin.IRoutes) {
	r.GET("/me", a.Me)
	r.GET("/users/profile", a.relayJSON("profile", true, staticPath("/users/profile")))
	r.PUT("/users/profile", a.relayJSON("profile", true, staticPath("/users/profile")))
	// alias surface kept for storefront builds that call /api/profile
	r.GET("/profile", a.relayJSON("profile", true, staticPath("/users/profile")))
	r.PUT("/profile", a.relayJSON("profile", true, staticPath("/users/profile")))
	r.PATCH("/users/role", a.relayJSON("user-role", true, staticPath("/users/role")))
	r.POST("/users/avatar", a.relayUpload("avatar-upload", func(*gin.Context) []string {
		return upstream.AvatarUploadResolution.Candidates
	}))
	r.POST("/onboarding/complete", a.CompleteOnboarding)
}
