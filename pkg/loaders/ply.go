package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block declared in the header, in file order
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the mesh loaded from a PLY file
type PLYData struct {
	Vertices []core.Point
	Faces    [][]int      // Vertex indices per face, any number of vertices
	Colors   []core.Color // Per-vertex colors on the 0..255 scale - empty if not present
}

// LoadPLY loads an ASCII or binary PLY file
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	klog.V(1).Infof("Loaded PLY data from %s: %d vertices, %d faces in %v",
		filename, len(data.Vertices), len(data.Faces), time.Since(startTime))
	return data, nil
}

// ReadPLY reads a PLY document. Elements other than vertex and face are skipped.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValues{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValues{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValues{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			if err := data.readElement(element, values); err != nil {
				return nil, fmt.Errorf("failed to read %s %d: %w", element.Name, i, err)
			}
		}
	}

	for i, face := range data.Faces {
		for _, index := range face {
			if index < 0 || index >= len(data.Vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d", i, index, len(data.Vertices))
			}
		}
	}
	return data, nil
}

// parsePLYHeader parses the header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement

	for lineNumber := 1; ; lineNumber++ {
		raw, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("missing end_header")
			}
			return nil, fmt.Errorf("error reading header: %w", err)
		}

		line := strings.TrimSpace(raw)
		if lineNumber == 1 {
			if line != "ply" {
				return nil, fmt.Errorf("not a PLY file")
			}
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]
		case "property":
			if current == nil {
				return nil, fmt.Errorf("property before any element: %q", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current.Props = append(current.Props, prop)
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("missing format line")
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// readElement reads one element instance, keeping vertex positions, vertex colors and face indices
func (d *PLYData) readElement(element PLYElement, values valueReader) error {
	var x, y, z float64
	var rgb [3]float64
	hasColor := false

	for _, prop := range element.Props {
		if prop.IsList {
			count, err := values.read(prop.ListType)
			if err != nil {
				return err
			}
			list := make([]int, int(count))
			for i := range list {
				v, err := values.read(prop.DataType)
				if err != nil {
					return err
				}
				list[i] = int(v)
			}
			if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
				d.Faces = append(d.Faces, list)
			}
			continue
		}

		v, err := values.read(prop.Type)
		if err != nil {
			return err
		}
		if element.Name != "vertex" {
			continue
		}
		switch prop.Name {
		case "x":
			x = v
		case "y":
			y = v
		case "z":
			z = v
		case "red", "r":
			rgb[0], hasColor = v, true
		case "green", "g":
			rgb[1], hasColor = v, true
		case "blue", "b":
			rgb[2], hasColor = v, true
		}
	}

	if element.Name == "vertex" {
		d.Vertices = append(d.Vertices, core.NewPoint(x, y, z))
		if hasColor {
			d.Colors = append(d.Colors, core.NewColor(rgb[0], rgb[1], rgb[2]))
		}
	}
	return nil
}

// Mesh builds an aggregate with one polygon per face. Faces that are not convex
// polygons are split into a triangle fan; degenerate triangles are dropped.
func (d *PLYData) Mesh(emission core.Color, mat material.Material) (*geometry.Aggregate, error) {
	var shapes []geometry.Shape
	skipped := 0

	add := func(points []core.Point) bool {
		polygon, err := geometry.NewPolygon(points...)
		if err != nil {
			return false
		}
		shapes = append(shapes, polygon.SetEmission(emission).SetMaterial(mat))
		return true
	}

	for _, face := range d.Faces {
		points := make([]core.Point, len(face))
		for i, index := range face {
			points[i] = d.Vertices[index]
		}
		if len(points) < 3 || add(points) {
			continue
		}
		for i := 1; i+1 < len(points); i++ {
			if !add([]core.Point{points[0], points[i], points[i+1]}) {
				skipped++
			}
		}
	}

	if len(shapes) == 0 {
		return nil, fmt.Errorf("mesh has no usable faces")
	}
	if skipped > 0 {
		klog.V(2).Infof("Skipped %d degenerate mesh triangles", skipped)
	}
	return geometry.NewAggregate(shapes...), nil
}

// valueReader reads one scalar of a PLY data type
type valueReader interface {
	read(dataType string) (float64, error)
}

type asciiValues struct {
	scanner *bufio.Scanner
}

func (a *asciiValues) read(string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

type binaryValues struct {
	reader io.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValues) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.reader, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "char", "int8":
		return float64(int8(buf[0])), nil
	default:
		return float64(buf[0]), nil
	}
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if it is unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
