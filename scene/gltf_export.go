package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// glTF names for the non-position attributes. Application-specific
// attributes must start with an underscore.
var gltfAttributeNames = map[string]string{
	AttrCoordinates: "_COORDINATES",
	AttrSpeed:       "_SPEED",
	AttrOffset:      "_OFFSET",
	AttrDirection:   "_DIRECTION",
	AttrPress:       "_PRESS",
}

// FieldDocument builds a glTF document holding the field as a single
// POINTS primitive.
func FieldDocument(f *PointField) *gltf.Document {
	doc := gltf.NewDocument()
	attrs := gltf.PrimitiveAttributes{}

	for _, a := range f.Attributes() {
		if a.Name == AttrPosition {
			attrs["POSITION"] = modeler.WritePosition(doc, vec3s(a.Data))
			continue
		}
		var data any = a.Data
		if a.Components == 3 {
			data = vec3s(a.Data)
		}
		attrs[gltfAttributeNames[a.Name]] = modeler.WriteAccessor(doc, gltf.TargetArrayBuffer, data)
	}

	doc.Meshes = []*gltf.Mesh{{
		Name: "point_field",
		Primitives: []*gltf.Primitive{{
			Mode:       gltf.PrimitivePoints,
			Attributes: attrs,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "point_field", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// ExportGLB writes the field to a binary glTF file.
func ExportGLB(path string, f *PointField) error {
	if err := gltf.SaveBinary(FieldDocument(f), path); err != nil {
		return fmt.Errorf("gltf save %q: %w", path, err)
	}
	return nil
}

func vec3s(data []float32) [][3]float32 {
	out := make([][3]float32, len(data)/3)
	for i := range out {
		out[i] = [3]float32{data[3*i], data[3*i+1], data[3*i+2]}
	}
	return out
}
