package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is an ordered collection of shapes that is itself a Shape
type HittableList struct {
	objects []Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	list := &HittableList{}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape to the list
func (l *HittableList) Add(shape Shape) {
	l.objects = append(l.objects, shape)
}

// Clear removes every shape
func (l *HittableList) Clear() {
	l.objects = nil
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the shapes in insertion order
func (l *HittableList) Objects() []Shape {
	return l.objects
}

// Hit returns the nearest intersection over all shapes in the list
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.objects {
		if hit, isHit := shape.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
