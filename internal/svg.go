package internal

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
)

// Read every <polygon> element of an SVG document as a contour. Only the
// points attribute is looked at, so transforms and styles are ignored. The
// result is meant to be read with the even-odd rule, like SVG's own
// fill-rule="evenodd".
func ReadSVG(r io.Reader) (ContourList, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	var list ContourList
	for i, element := range root.FindAll("polygon") {
		contour, err := parseSVGPoints(element.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		if len(contour) < 3 {
			return nil, errors.Errorf("polygon %d has %d points", i, len(contour))
		}
		list = append(list, contour)
	}
	if len(list) == 0 {
		return nil, errors.New("no polygons found")
	}
	return list, nil
}

// Parse "x,y x,y ..." into a contour.
func parseSVGPoints(pointString string) (Contour, error) {
	var points Contour
	for _, pair := range strings.Fields(pointString) {
		coordinates := strings.Split(pair, ",")
		if len(coordinates) != 2 {
			return nil, errors.Errorf("invalid point string %q", pair)
		}
		x, err := strconv.ParseFloat(coordinates[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", coordinates[0])
		}
		y, err := strconv.ParseFloat(coordinates[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", coordinates[1])
		}
		points = append(points, NewVertex(x, y))
	}
	return points, nil
}
