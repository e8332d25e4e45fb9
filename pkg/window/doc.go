/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package window implements the window clause of a FLWOR expression. A window clause
// partitions an ordered input sequence into windows: contiguous runs of items whose
// boundaries are decided by a start condition and an optional end condition, each
// evaluated against the item at a candidate position and its neighbours.
//
// Windows are of two kinds,
//   * Tumbling windows never overlap. Once a window closes, the search for the next
//     start resumes right after its last item.
//   * Sliding windows probe every position as a start, so windows may overlap and an
//     item may belong to many windows.
//
// Without an end condition a window closes right before the next position at which the
// start condition holds again, or at the end of the input. With an end condition the
// window closes at the first position (starting from the window's own start) where the
// end condition holds. If none does, the window absorbs the remaining input, unless the
// end clause is marked "only", in which case the window is dropped.
//
// The Scanner produces windows lazily, one per Scan call, and holds no resources, so a
// caller may stop pulling at any time.
package window
