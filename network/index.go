package network

import "fmt"

// Index maps object keys to dense matrix positions and back. Positions
// follow declaration order.
type Index struct {
	objects []Object
	byKey   map[int]int
}

func NewIndex(objects []Object) (*Index, error) {
	idx := &Index{
		objects: make([]Object, len(objects)),
		byKey:   make(map[int]int, len(objects)),
	}
	copy(idx.objects, objects)
	for i, obj := range objects {
		if _, ok := idx.byKey[obj.Key]; ok {
			return nil, fmt.Errorf("%w: object %d indexed twice", ErrMalformedRecord, obj.Key)
		}
		idx.byKey[obj.Key] = i
	}
	return idx, nil
}

func (idx *Index) Len() int {
	return len(idx.objects)
}

// Position returns the dense index of an object key.
func (idx *Index) Position(key int) (int, error) {
	i, ok := idx.byKey[key]
	if !ok {
		return 0, &IdentifierError{Kind: ObjectKind, ID: key}
	}
	return i, nil
}

func (idx *Index) Key(pos int) int {
	return idx.objects[pos].Key
}

func (idx *Index) Name(pos int) string {
	return idx.objects[pos].Name
}
