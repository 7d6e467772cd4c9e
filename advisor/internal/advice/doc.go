// Package advice holds general agronomy advice that is not tied to a crop.
//
// The embedded advice.yaml lists topics (land preparation, planting,
// nutrient and water management, weed control, disease prevention, pruning,
// harvesting, pests, fertilizer, irrigation). Book.Lookup never fails: an
// unknown topic returns a general answer naming the topics that exist.
package advice
