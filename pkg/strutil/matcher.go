package strutil

import "strings"

// KeywordMatcher 포함/제외 키워드 조건을 미리 전처리해 두고 반복 검사합니다.
//
// 포함 키워드는 모두 만족해야 하며(AND), "a|b" 형태는 그룹 내 OR 조건입니다.
// 제외 키워드는 하나라도 포함되면 매칭에 실패합니다. 대소문자는 구분하지 않습니다.
type KeywordMatcher struct {
	includedGroups [][]string
	excluded       []string
}

func NewKeywordMatcher(included, excluded []string) *KeywordMatcher {
	m := &KeywordMatcher{
		includedGroups: make([][]string, 0, len(included)),
		excluded:       make([]string, 0, len(excluded)),
	}

	for _, k := range excluded {
		if k = strings.TrimSpace(k); k != "" {
			m.excluded = append(m.excluded, strings.ToLower(k))
		}
	}

	for _, k := range included {
		group := SplitAndTrim(k, "|")
		if len(group) == 0 {
			continue
		}
		for i := range group {
			group[i] = strings.ToLower(group[i])
		}
		m.includedGroups = append(m.includedGroups, group)
	}

	return m
}

func (m *KeywordMatcher) Match(s string) bool {
	for _, k := range m.excluded {
		if containsFold(s, k) {
			return false
		}
	}

	for _, group := range m.includedGroups {
		matched := false
		for _, k := range group {
			if containsFold(s, k) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Excluded s가 제외 키워드 중 하나라도 포함하는지 확인합니다.
func (m *KeywordMatcher) Excluded(s string) bool {
	for _, k := range m.excluded {
		if containsFold(s, k) {
			return true
		}
	}
	return false
}

// containsFold 할당 없이 대소문자 무시 포함 여부를 검사합니다.
// 대소문자 변환 시 바이트 길이가 달라지는 문자(터키어 İ 등)는 정확하지 않을 수 있습니다.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	for i := range s {
		if i+len(substr) > len(s) {
			break
		}
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return true
		}
	}
	return false
}
