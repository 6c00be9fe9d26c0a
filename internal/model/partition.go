package model

import "time"

// Partition identifies one of the twelve monthly subdivisions of the ledger
// store. Labels follow the workbook's historical Portuguese month naming.
type Partition string

const (
	PartitionJan Partition = "JAN"
	PartitionFev Partition = "FEV"
	PartitionMar Partition = "MAR"
	PartitionAbr Partition = "ABR"
	PartitionMai Partition = "MAI"
	PartitionJun Partition = "JUN"
	PartitionJul Partition = "JUL"
	PartitionAgo Partition = "AGO"
	PartitionSet Partition = "SET"
	PartitionOut Partition = "OUT"
	PartitionNov Partition = "NOV"
	PartitionDez Partition = "DEZ"
)

var partitionOrder = []Partition{
	PartitionJan, PartitionFev, PartitionMar, PartitionAbr,
	PartitionMai, PartitionJun, PartitionJul, PartitionAgo,
	PartitionSet, PartitionOut, PartitionNov, PartitionDez,
}

// Partitions returns all twelve partitions in calendar order.
func Partitions() []Partition {
	out := make([]Partition, len(partitionOrder))
	copy(out, partitionOrder)
	return out
}

// PartitionOf returns the partition a date belongs to, keyed on its month.
func PartitionOf(t time.Time) Partition {
	return partitionOrder[int(t.Month())-1]
}

// Month returns the calendar month a partition covers.
func (p Partition) Month() time.Month {
	for i, label := range partitionOrder {
		if label == p {
			return time.Month(i + 1)
		}
	}
	return 0
}

// Valid reports whether p is one of the twelve known labels.
func (p Partition) Valid() bool {
	return p.Month() != 0
}
