package password

// Cost 仅测试使用
func (h *Hasher) Cost() int { return h.cost }
