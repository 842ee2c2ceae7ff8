// Package server exposes a Store over HTTP for `geoloc serve`: a JSON
// lookup endpoint plus a health check, sitting on top of the same
// read-only mmap a CLI query would use.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/internal/logging"
)

// jsonResult is the wire shape of a /lookup response.
type jsonResult struct {
	IP      string  `json:"ip"`
	Country string  `json:"country,omitempty"`
	Region  string  `json:"region,omitempty"`
	City    string  `json:"city,omitempty"`
	Lat     float32 `json:"lat,omitempty"`
	Lon     float32 `json:"lon,omitempty"`
	ASN     uint32  `json:"asn,omitempty"`
	ASNText string  `json:"asn_text,omitempty"`
}

func toJSON(r geoloc.IPResult) jsonResult {
	out := jsonResult{IP: quadString(r.Quad)}
	if r.HasLoc {
		out.Country = r.Country
		out.Region = r.Region
		out.City = r.City
		out.Lat = r.Lat
		out.Lon = r.Lon
	}
	if r.HasASN {
		out.ASN = r.ASNNumber
		out.ASNText = r.ASNText
	}
	return out
}

func quadString(quad uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		(quad>>24)&0xff, (quad>>16)&0xff, (quad>>8)&0xff, quad&0xff)
}

// New builds a gin engine with a GET /lookup/:ip route backed by store
// and a GET /healthz route. log receives one Context breadcrumb per
// lookup request, mirroring the
// LOG_CONTEXT calls GeoData::open uses around each load step.
func New(log *logging.Logger, store *geoloc.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/lookup/:ip", func(c *gin.Context) {
		ip := c.Param("ip")
		log.Context("server.go", 0, "lookup request for %s", ip)

		quad, err := geoloc.ParseDottedQuad([]byte(ip))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := store.Query(quad)
		c.JSON(http.StatusOK, toJSON(result))
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
