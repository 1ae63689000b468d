package model

// Issue 问题类型表，对应 issues
// Complaints 仅用于声明外键（complaints.issue_id → issues.issue_id），查询时不预加载
type Issue struct {
	IssueID   int    `gorm:"column:issue_id;primaryKey;autoIncrement"    json:"issue_id"`
	IssueType string `gorm:"column:issue_type;type:varchar(50);not null" json:"issue_type"`

	Complaints []Complaint `gorm:"foreignKey:IssueID;references:IssueID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName 指定表名
func (Issue) TableName() string { return "issues" }
