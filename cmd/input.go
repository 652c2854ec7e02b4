package cmd

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/osuushi/trimesh"
	"github.com/pkg/errors"
)

// Read contours from newline separated points in the form "x y", with each
// contour separated by an extra newline. Lines starting with # are comments.
//
// The contours are read with the even-odd rule, so winding doesn't matter.
func readContours(in io.Reader) (trimesh.ContourList, error) {
	var contours trimesh.ContourList
	// Scan lines
	scanner := bufio.NewScanner(in)
	var points trimesh.Contour
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		// Read the next line
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}

		// If it's empty, and we collected any points, this is the end of the contour
		if line == "" {
			if len(points) > 0 {
				contours = append(contours, points)
				points = nil
			}
			continue
		}

		// Parse the point out of the line
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading contours")
	}

	// Handle trailing contour if any
	if len(points) > 0 {
		contours = append(contours, points)
	}
	if len(contours) == 0 {
		return nil, errors.New("no contours in input")
	}
	return contours, nil
}

func parsePoint(line string) (*trimesh.Vertex, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return nil, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing y")
	}
	return trimesh.NewVertex(x, y), nil
}

// Load the run's contours: from an SVG file if one is given, otherwise from
// the point file, or stdin when that is empty or "-".
func loadContours(svgPath, inputPath string, stdin io.Reader) (trimesh.ContourList, error) {
	if svgPath != "" {
		file, err := openExpanded(svgPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return trimesh.ReadSVG(file)
	}
	if inputPath == "" || inputPath == "-" {
		return readContours(stdin)
	}
	file, err := openExpanded(inputPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readContours(file)
}

func openExpanded(path string) (*os.File, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %s", path)
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	return file, nil
}
