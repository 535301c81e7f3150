package cart

import (
	"sort"
	"strings"
)

const noOptionsSuffix = "_no_options"

// DeriveKey 计算行项目身份键
//
// 没有选项或选项值全为空时返回 "{productID}_no_options"；
// 否则去掉空值、按选项组名升序排列，以 "组:值" 用 "|" 拼接。
func DeriveKey(productID string, options map[string]string) string {
	pairs := make([]string, 0, len(options))
	groups := make([]string, 0, len(options))
	for group, value := range options {
		if value != "" {
			groups = append(groups, group)
		}
	}
	if len(groups) == 0 {
		return productID + noOptionsSuffix
	}
	sort.Strings(groups)
	for _, group := range groups {
		pairs = append(pairs, group+":"+options[group])
	}
	return productID + "_" + strings.Join(pairs, "|")
}
