package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shaiso/Conduit/internal/domain"
)

// GraphFile — формат файла графа для compile и run.
//
// Поддерживаются два варианта: полный ({"name": ..., "nodes": ...,
// "edges": ...}) и голый GraphDef ({"nodes": ..., "edges": ...}).
type GraphFile struct {
	Name  string             `json:"name,omitempty"`
	Nodes []domain.GraphNode `json:"nodes"`
	Edges []domain.GraphEdge `json:"edges"`
}

// LoadGraphFile читает и парсит файл графа.
func LoadGraphFile(path string) (*GraphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}

	var gf GraphFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("parse graph file %s: %w", path, err)
	}

	if gf.Name == "" {
		gf.Name = path
	}
	return &gf, nil
}
