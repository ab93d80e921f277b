package recordstream

// Keys carry the id of the partition that generated them in their high bits.
const (
	PartitionBits = 13
	KeyBits       = 51

	keyInPartitionMask int64 = (1 << KeyBits) - 1
)

// EncodePartitionID combines a partition id and a partition-local key into a global key.
func EncodePartitionID(partitionID int32, keyInPartition int64) int64 {
	return int64(partitionID)<<KeyBits + keyInPartition
}

// DecodePartitionID returns the partition id encoded in a global key.
func DecodePartitionID(key int64) int32 {
	return int32(key >> KeyBits)
}

// DecodeKeyInPartition returns the partition-local part of a global key.
func DecodeKeyInPartition(key int64) int64 {
	return key & keyInPartitionMask
}
