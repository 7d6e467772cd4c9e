// Package compute scores field conditions against crop requirements.
//
// score.go provides the pure Compute(Conditions, OptimalConditions) function:
// temperature, humidity, rainfall and pH each contribute up to 1.0, N, P and K
// up to 0.5, and the total is divided by 5.5. A value inside the optimal
// interval earns the full weight; outside it, credit decays linearly with the
// distance from the interval midpoint (decay 10, 20, 50, 2, 100, 50, 50).
//
// scorer.go binds Compute to a crop table: Score(cropID, conditions) returns 0
// for unknown crops.
//
// recommend.go ranks every crop with a stable sort (ties keep table order)
// and builds the Result for the best match, including the top three.
//
// Ratings: highly_suitable ≥0.85, suitable ≥0.60, marginal ≥0.35, unsuitable.
package compute
