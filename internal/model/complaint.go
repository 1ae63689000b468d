package model

import "time"

// Complaint 投诉表，对应 complaints
type Complaint struct {
	ComplaintID     int       `gorm:"column:complaint_id;primaryKey;autoIncrement"           json:"complaint_id"`
	DepttID         int       `gorm:"column:deptt_id;not null;index"                         json:"deptt_id"`
	IssueID         int       `gorm:"column:issue_id;not null;index"                         json:"issue_id"`
	ComplaintDetail string    `gorm:"column:complaint_detail;type:text;not null"             json:"complaint_detail"`
	Status          string    `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;autoCreateTime"              json:"created_at"`
}

// TableName 指定表名
func (Complaint) TableName() string { return "complaints" }

// ComplaintView 投诉展示模型：联表取部门名称与问题类型，始终反映被引用行的当前值
type ComplaintView struct {
	ComplaintID     int       `gorm:"column:complaint_id"     json:"complaint_id"`
	DepttID         int       `gorm:"column:deptt_id"         json:"deptt_id"`
	DepttName       string    `gorm:"column:deptt_name"       json:"deptt_name"`
	IssueID         int       `gorm:"column:issue_id"         json:"issue_id"`
	IssueType       string    `gorm:"column:issue_type"       json:"issue_type"`
	ComplaintDetail string    `gorm:"column:complaint_detail" json:"complaint_detail"`
	Status          string    `gorm:"column:status"           json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at"       json:"created_at"`
}
