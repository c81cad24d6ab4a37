// Package export renders pipeline results as GeoJSON documents.
package export

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"

	"github.com/travelnurselog/contractmap/internal/geo"
	"github.com/travelnurselog/contractmap/internal/region"
	"github.com/travelnurselog/contractmap/internal/viewport"
)

// FeatureCollection builds a GeoJSON document from a recomputation
// result: one point per visible contract, a polygon tracing the padded
// smart box and a point carrying the camera center and zoom. Contract
// longitudes are normalized so the whole document sits in one
// convention.
func FeatureCollection(res viewport.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, p := range res.Visible {
		lng := geo.NormalizeLng(float64(p.Contract.Longitude))
		f := geojson.NewFeature(orb.Point{lng, float64(p.Contract.Latitude)})
		f.Properties["kind"] = "contract"
		f.Properties["id"] = p.Contract.ID
		f.Properties["region"] = p.Region
		if p.Contract.Facility != "" {
			f.Properties["facility"] = p.Contract.Facility
		}
		if p.Contract.City != "" {
			f.Properties["city"] = p.Contract.City
		}
		if p.Contract.State != "" {
			f.Properties["state"] = p.Contract.State
		}
		if p.Contract.StartDate != "" {
			f.Properties["start_date"] = p.Contract.StartDate
		}
		if p.Contract.EndDate != "" {
			f.Properties["end_date"] = p.Contract.EndDate
		}
		fc.Append(f)
	}

	box := geojson.NewFeature(boxPolygon(res.Box.Box))
	box.Properties["kind"] = "smart-box"
	box.Properties["count"] = res.Box.Count
	fc.Append(box)

	center := geojson.NewFeature(orb.Point{res.Viewport.Center.Lng, res.Viewport.Center.Lat})
	center.Properties["kind"] = "viewport-center"
	center.Properties["zoom"] = res.Viewport.Zoom
	fc.Append(center)

	return fc
}

// RegionCollection builds a GeoJSON document of the static region
// table, one polygon per bounded region.
func RegionCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, r := range region.Table {
		f := geojson.NewFeature(boxPolygon(r.Bounds))
		f.Properties["kind"] = "region"
		f.Properties["name"] = r.Name
		f.Properties["label"] = r.Label
		fc.Append(f)
	}

	return fc
}

// Marshal encodes the collection, optionally minified for embedding.
func Marshal(fc *geojson.FeatureCollection, minified bool) ([]byte, error) {
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if !minified {
		return data, nil
	}

	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)
	return m.Bytes("application/json", data)
}

// WriteFile marshals the collection to the given path, or to stdout
// when path is "-".
func WriteFile(path string, fc *geojson.FeatureCollection, minified bool) error {
	data, err := Marshal(fc, minified)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// boxPolygon traces a bounds rectangle counter-clockwise from the
// south-west corner.
func boxPolygon(b geo.Bounds) orb.Polygon {
	b = b.Canonical()
	return orb.Polygon{orb.Ring{
		{b.West, b.South},
		{b.East, b.South},
		{b.East, b.North},
		{b.West, b.North},
		{b.West, b.South},
	}}
}
