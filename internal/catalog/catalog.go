package catalog

import (
	"fmt"
	"sort"

	"github.com/shaiso/Conduit/internal/domain"
)

// Catalog — справочник типов узлов.
//
// Заполняется один раз при старте процесса и дальше только читается.
// Компилятор и движок получают каталог как явную зависимость —
// глобального мутабельного состояния нет.
type Catalog struct {
	specs map[string]domain.NodeTypeSpec
}

// New создаёт пустой каталог.
func New() *Catalog {
	return &Catalog{
		specs: make(map[string]domain.NodeTypeSpec),
	}
}

// Register добавляет тип узла в каталог.
// Повторная регистрация перезаписывает предыдущую запись.
func (c *Catalog) Register(nodeType string, spec domain.NodeTypeSpec) {
	c.specs[nodeType] = spec
}

// Lookup возвращает спецификацию типа узла.
func (c *Catalog) Lookup(nodeType string) (domain.NodeTypeSpec, bool) {
	spec, ok := c.specs[nodeType]
	return spec, ok
}

// Has проверяет, зарегистрирован ли тип узла.
func (c *Catalog) Has(nodeType string) bool {
	_, ok := c.specs[nodeType]
	return ok
}

// Types возвращает отсортированный список зарегистрированных типов.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.specs))
	for t := range c.specs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Size возвращает количество зарегистрированных типов.
func (c *Catalog) Size() int {
	return len(c.specs)
}

// MustLookup возвращает спецификацию или паникует.
// Для инициализационного кода и тестов.
func (c *Catalog) MustLookup(nodeType string) domain.NodeTypeSpec {
	spec, ok := c.specs[nodeType]
	if !ok {
		panic(fmt.Sprintf("catalog: node type %q is not registered", nodeType))
	}
	return spec
}
