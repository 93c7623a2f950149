package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// HitableList is an ordered collection of hitables searched linearly
type HitableList struct {
	Objects []Hitable
}

// NewHitableList creates a list holding the given objects
func NewHitableList(objects ...Hitable) *HitableList {
	return &HitableList{Objects: objects}
}

// Add appends an object to the list
func (l *HitableList) Add(object Hitable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HitableList) Len() int {
	return len(l.Objects)
}

// Hit returns the globally closest hit among all objects
func (l *HitableList) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
