// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles overlap
func (c Circle) Collides(other Circle) bool {
	reach := c.Radius + other.Radius
	return c.Center.Sub(other.Center).LengthSquared() < reach*reach
}

// Contains reports whether point lies inside or on the circle
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Sub(point).LengthSquared() <= c.Radius*c.Radius
}

// Bounds returns the axis-aligned square enclosing the circle
func (c Circle) Bounds() Rect {
	return Rect{Center: c.Center, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D
	Penetration  float64
	ContactPoint Vector2D
}

// CheckCollision performs detailed collision detection between two circles
func CheckCollision(a, b Circle) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	normal = normal.Normalize()
	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center.Add(normal.Scale(a.Radius)),
	}
}

// Rect represents an axis-aligned rectangle given by its center
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies in the half-open rectangle
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

type quadItem[T any] struct {
	point Vector2D
	value T
}

// QuadTree partitions points for broad-phase queries
type QuadTree[T any] struct {
	Boundary Rect
	Capacity int

	items    []quadItem[T]
	children *[4]*QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		items:    make([]quadItem[T], 0, capacity),
	}
}

// Insert stores value at point. It returns false when point is outside the tree.
func (qt *QuadTree[T]) Insert(point Vector2D, value T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if qt.children == nil && len(qt.items) < qt.Capacity {
		qt.items = append(qt.items, quadItem[T]{point: point, value: value})
		return true
	}

	if qt.children == nil {
		qt.subdivide()
	}

	for _, child := range qt.children {
		if child.Insert(point, value) {
			return true
		}
	}
	return false
}

func (qt *QuadTree[T]) subdivide() {
	x, y := qt.Boundary.Center.X, qt.Boundary.Center.Y
	w, h := qt.Boundary.Width/2, qt.Boundary.Height/2

	qt.children = &[4]*QuadTree[T]{
		NewQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity),
		NewQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity),
		NewQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity),
		NewQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity),
	}
}

// Query returns every value whose point lies inside area
func (qt *QuadTree[T]) Query(area Rect) []T {
	var found []T
	qt.query(area, &found)
	return found
}

func (qt *QuadTree[T]) query(area Rect, found *[]T) {
	if !qt.Boundary.Intersects(area) {
		return
	}
	for _, item := range qt.items {
		if area.Contains(item.point) {
			*found = append(*found, item.value)
		}
	}
	if qt.children == nil {
		return
	}
	for _, child := range qt.children {
		child.query(area, found)
	}
}

// QueryCircle returns every value whose point lies inside circle
func (qt *QuadTree[T]) QueryCircle(circle Circle) []T {
	var found []T
	qt.queryCircle(circle, &found)
	return found
}

func (qt *QuadTree[T]) queryCircle(circle Circle, found *[]T) {
	if !qt.Boundary.Intersects(circle.Bounds()) {
		return
	}
	for _, item := range qt.items {
		if circle.Contains(item.point) {
			*found = append(*found, item.value)
		}
	}
	if qt.children == nil {
		return
	}
	for _, child := range qt.children {
		child.queryCircle(circle, found)
	}
}

// Len returns the number of stored values
func (qt *QuadTree[T]) Len() int {
	n := len(qt.items)
	if qt.children != nil {
		for _, child := range qt.children {
			n += child.Len()
		}
	}
	return n
}
