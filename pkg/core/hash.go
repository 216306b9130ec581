package core

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"gitlet/pkg/types"

	"github.com/fxamacker/cbor/v2"
)

// 定义确定性编码选项
// 同一个提交记录必须永远生成同一串字节，指纹才是全局稳定的
var encOptions = cbor.EncOptions{
	// 1. 强制 Map Key 排序 (Canonical)
	Sort: cbor.SortCanonical,

	// 2. 时间格式化为 Unix 整数
	// 禁止自动生成 Tag 0/1 (RFC 3339 字符串)
	Time:    cbor.TimeUnix,
	TimeTag: cbor.EncTagNone,

	// 3. 禁止不定长编码 (Indefinite Length)
	// 数组和 Map 必须在头部声明长度
	IndefLength: cbor.IndefLengthForbidden,

	ShortestFloat: cbor.ShortestFloatNone,
}

// 全局复用的编码模式
var em, _ = encOptions.EncMode()

// 解码选项：严格模式，损坏的提交文件要尽早报错
var decOptions = cbor.DecOptions{
	// 限制容器元素数量和嵌套深度，防止恶意构造的头部耗尽内存
	MaxArrayElements: 100000,
	MaxMapPairs:      100000,
	MaxNestedLevels:  16,

	IndefLength: cbor.IndefLengthForbidden,

	// 禁止重复 Key
	DupMapKey: cbor.DupMapKeyEnforcedAPF,
}

var dm, _ = decOptions.DecMode()

// CalculateHash 计算对象的指纹和规范序列化数据
func CalculateHash(v any) (types.Fingerprint, []byte, error) {
	data, err := em.Marshal(v)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal object: %w", err)
	}

	return FingerprintBlob(data), data, nil
}

// FingerprintBlob 计算原始字节序列的指纹 (SHA-1 Hex)
func FingerprintBlob(data []byte) types.Fingerprint {
	sum := sha1.Sum(data)
	return types.Fingerprint(hex.EncodeToString(sum[:]))
}
