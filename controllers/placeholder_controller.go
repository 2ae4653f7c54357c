package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPlaceholderSize = 80
	maxPlaceholderSize     = 2000
)

// Placeholder handles GET /api/placeholder/:width/:height with a grey "No Image" SVG.
func Placeholder(c echo.Context) error {
	w := placeholderDimension(c.Param("width"))
	h := placeholderDimension(c.Param("height"))

	minSide := w
	if h < minSide {
		minSide = h
	}

	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="#f3f4f6"/>
  <circle cx="%g" cy="%g" r="%g" fill="#d1d5db"/>
  <rect x="%g" y="%g" width="%g" height="%g" rx="2" fill="#d1d5db"/>
  <text x="%g" y="%d" text-anchor="middle" font-family="Arial, sans-serif" font-size="10" fill="#9ca3af">No Image</text>
</svg>
`,
		w, h,
		float64(w)/2, float64(h)/2-10, float64(minSide)/6,
		float64(w)/2-float64(w)/8, float64(h)/2+5, float64(w)/4, float64(h)/8,
		float64(w)/2, h-10,
	)

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(svg))
}

// placeholderDimension falls back to the default for anything that is not a positive integer.
func placeholderDimension(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultPlaceholderSize
	}
	if n > maxPlaceholderSize {
		return maxPlaceholderSize
	}
	return n
}
