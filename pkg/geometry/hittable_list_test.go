package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mockShape records the intervals it was queried with
type mockShape struct {
	hitFn   func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	queries []core.Interval
}

func (m *mockShape) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	m.queries = append(m.queries, rayT)
	return m.hitFn(ray, rayT)
}

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit, isHit := list.Hit(ray, defaultRayT); isHit || hit != nil {
		t.Errorf("Empty list should never be hit, got %v", hit)
	}
}

func TestHittableList_NearestWinsRegardlessOfOrder(t *testing.T) {
	near := material.NewLambertian(core.NewVec3(1, 0, 0))
	far := material.NewLambertian(core.NewVec3(0, 0, 1))

	nearSphere := NewSphere(core.NewVec3(0, 0, -2), 0.5, near)
	farSphere := NewSphere(core.NewVec3(0, 0, -5), 0.5, far)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orders := map[string]*HittableList{
		"near first": NewHittableList(nearSphere, farSphere),
		"far first":  NewHittableList(farSphere, nearSphere),
	}

	for name, list := range orders {
		t.Run(name, func(t *testing.T) {
			hit, isHit := list.Hit(ray, defaultRayT)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected nearest hit at t=1.5, got %f", hit.T)
			}
			if hit.Material != near {
				t.Errorf("Expected material of the nearest sphere")
			}
		})
	}
}

func TestHittableList_NarrowsInterval(t *testing.T) {
	first := &mockShape{hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
		return &material.HitRecord{T: 4}, true
	}}
	second := &mockShape{hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
		return nil, false
	}}

	list := NewHittableList(first, second)
	list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), core.NewInterval(0.001, 100))

	if len(second.queries) != 1 {
		t.Fatalf("Expected one query on the second shape, got %d", len(second.queries))
	}
	if second.queries[0].Max != 4 || second.queries[0].Min != 0.001 {
		t.Errorf("Expected the second query over (0.001, 4), got %+v", second.queries[0])
	}
}

func TestHittableList_AddAndClear(t *testing.T) {
	list := NewHittableList()
	list.Add(NewSphere(core.NewVec3(0, 0, -1), 0.5, nil))
	list.Add(NewSphere(core.NewVec3(0, 0, -3), 0.5, nil))

	if list.Len() != 2 {
		t.Fatalf("Expected 2 objects, got %d", list.Len())
	}

	list.Clear()
	if list.Len() != 0 {
		t.Errorf("Expected empty list after Clear, got %d", list.Len())
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := list.Hit(ray, defaultRayT); isHit {
		t.Error("Cleared list should not be hit")
	}
}
