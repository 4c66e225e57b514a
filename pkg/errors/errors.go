package errors

import "errors"

// ErrSeedDataMissing 参考数据（资产/产品目录）未初始化
var ErrSeedDataMissing = errors.New("参考数据未初始化，请检查启动种子流程")
