package model

// Department 部门表，对应 departments
// Complaints 仅用于声明外键（complaints.deptt_id → departments.deptt_id），查询时不预加载
type Department struct {
	DepttID   int    `gorm:"column:deptt_id;primaryKey;autoIncrement"      json:"deptt_id"`
	DepttName string `gorm:"column:deptt_name;type:varchar(100);not null" json:"deptt_name"`

	Complaints []Complaint `gorm:"foreignKey:DepttID;references:DepttID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
