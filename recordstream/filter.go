package recordstream

import (
	"cmp"
	"slices"
)

/***** Filter *****/

// Filter is declarative matching criteria on the record envelope.
// FilterItems are OR-ed; record type and partition constraints are AND-ed with them.
type Filter struct {
	items        []FilterItem
	recordTypes  []RecordType
	partitionIDs []int32
}

func (f Filter) Items() []FilterItem {
	return f.items
}

func (f Filter) RecordTypes() []RecordType {
	return f.recordTypes
}

func (f Filter) PartitionIDs() []int32 {
	return f.partitionIDs
}

// Matches reports whether a record envelope satisfies the filter.
// An empty filter matches every record.
func (f Filter) Matches(m Metadata) bool {
	if len(f.recordTypes) > 0 && !slices.Contains(f.recordTypes, m.RecordType) {
		return false
	}

	if len(f.partitionIDs) > 0 && !slices.Contains(f.partitionIDs, m.PartitionID) {
		return false
	}

	if len(f.items) == 0 {
		return true
	}

	for _, item := range f.items {
		if item.Matches(m) {
			return true
		}
	}

	return false
}

/***** FilterItem *****/

type FilterItem struct {
	valueTypes []ValueType
	intents    []Intent
}

func (fi FilterItem) ValueTypes() []ValueType {
	return fi.valueTypes
}

func (fi FilterItem) Intents() []Intent {
	return fi.intents
}

// Matches reports whether the envelope has ANY of the item's value types AND ANY of its intents.
// Empty lists match everything.
func (fi FilterItem) Matches(m Metadata) bool {
	if len(fi.valueTypes) > 0 && !slices.Contains(fi.valueTypes, m.ValueType) {
		return false
	}

	if len(fi.intents) > 0 && !slices.Contains(fi.intents, m.Intent) {
		return false
	}

	return true
}

/***** FilterBuilder *****/

// FilterBuilder builds a record filter to narrow query views down to the records relevant for an assertion.
// It is designed to only allow "useful" filter combinations:
//
//   - empty filter
//   - (valueType)
//   - (valueType OR valueType...)
//   - (intent)
//   - (intent OR intent...)
//   - (valueType AND intent)
//   - ((valueType OR valueType...) AND (intent OR intent...))
//   - ((valueType AND intent) OR (valueType AND intent)...) -> multiple FilterItem(s)
//
// Each of the above can additionally be restricted to record types and partitions.
type FilterBuilder interface {
	// OfRecordTypes restricts the filter to one or multiple RecordTypes.
	OfRecordTypes(recordType RecordType, recordTypes ...RecordType) FilterBuilder

	// OnPartitions restricts the filter to records produced by one or multiple partitions.
	OnPartitions(partitionID int32, partitionIDs ...int32) FilterBuilder

	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyRecord directly creates a Filter without FilterItems.
	MatchingAnyRecord() Filter
}

type EmptyFilterItemBuilder interface {
	// AnyValueTypeOf adds one or multiple ValueTypes to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing empty ValueTypes ("")
	//	- sorting the ValueTypes
	//	- removing duplicate ValueTypes
	AnyValueTypeOf(valueType ValueType, valueTypes ...ValueType) FilterItemBuilderLackingIntents

	// AnyIntentOf adds one or multiple Intents to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing empty Intents ("")
	//	- sorting the Intents
	//	- removing duplicate Intents
	AnyIntentOf(intent Intent, intents ...Intent) FilterItemBuilderLackingValueTypes
}

type FilterItemBuilderLackingIntents interface {
	// AndAnyIntentOf adds one or multiple Intents to the current FilterItem.
	AndAnyIntentOf(intent Intent, intents ...Intent) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter with all FilterItems.
	Finalize() Filter
}

type FilterItemBuilderLackingValueTypes interface {
	// AndAnyValueTypeOf adds one or multiple ValueTypes to the current FilterItem.
	AndAnyValueTypeOf(valueType ValueType, valueTypes ...ValueType) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter with all FilterItems.
	Finalize() Filter
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter with all FilterItems.
	Finalize() Filter
}

// filterBuilder implements all the interfaces of FilterBuilder
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildRecordFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyRecord().
func BuildRecordFilter() FilterBuilder {
	return filterBuilder{}
}

// OfRecordTypes restricts the filter to one or multiple RecordTypes.
func (fb filterBuilder) OfRecordTypes(recordType RecordType, recordTypes ...RecordType) FilterBuilder {
	fb.filter.recordTypes = sanitize(
		append(slices.Clone(fb.filter.recordTypes), append([]RecordType{recordType}, recordTypes...)...),
		func(rt RecordType) bool { return rt < Command || rt > CommandRejection },
	)

	return fb
}

// OnPartitions restricts the filter to records produced by one or multiple partitions.
func (fb filterBuilder) OnPartitions(partitionID int32, partitionIDs ...int32) FilterBuilder {
	fb.filter.partitionIDs = sanitize(
		append(slices.Clone(fb.filter.partitionIDs), append([]int32{partitionID}, partitionIDs...)...),
		func(p int32) bool { return p < 0 },
	)

	return fb
}

// Matching starts a new FilterItem.
func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

// AnyValueTypeOf adds one or multiple ValueTypes to the current FilterItem expecting ANY ValueType to match.
func (fb filterBuilder) AnyValueTypeOf(valueType ValueType, valueTypes ...ValueType) FilterItemBuilderLackingIntents {
	fb.currentFilterItem.valueTypes = sanitize(
		append(slices.Clone(fb.currentFilterItem.valueTypes), append([]ValueType{valueType}, valueTypes...)...),
		func(vt ValueType) bool { return vt == "" },
	)

	return fb
}

// AndAnyValueTypeOf adds one or multiple ValueTypes to the current FilterItem expecting ANY ValueType to match.
func (fb filterBuilder) AndAnyValueTypeOf(valueType ValueType, valueTypes ...ValueType) CompletedFilterItemBuilder {
	return fb.AnyValueTypeOf(valueType, valueTypes...)
}

// AnyIntentOf adds one or multiple Intents to the current FilterItem expecting ANY Intent to match.
func (fb filterBuilder) AnyIntentOf(intent Intent, intents ...Intent) FilterItemBuilderLackingValueTypes {
	fb.currentFilterItem.intents = sanitize(
		append(slices.Clone(fb.currentFilterItem.intents), append([]Intent{intent}, intents...)...),
		func(i Intent) bool { return i == "" },
	)

	return fb
}

// AndAnyIntentOf adds one or multiple Intents to the current FilterItem expecting ANY Intent to match.
func (fb filterBuilder) AndAnyIntentOf(intent Intent, intents ...Intent) CompletedFilterItemBuilder {
	return fb.AnyIntentOf(intent, intents...)
}

// OrMatching finalizes the current FilterItem and starts a new one.
func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentFilterItem)
	fb.currentFilterItem = FilterItem{}

	return fb
}

// MatchingAnyRecord directly creates a filter without FilterItems.
func (fb filterBuilder) MatchingAnyRecord() Filter {
	return fb.filter
}

// Finalize returns the Filter with all FilterItems.
func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentFilterItem)

	return fb.filter
}

// sanitize removes invalid entries, sorts and de-duplicates.
func sanitize[E cmp.Ordered](all []E, invalid func(E) bool) []E {
	all = slices.DeleteFunc(all, invalid)
	slices.Sort(all)
	all = slices.Compact(all)

	return slices.Clip(all)
}
