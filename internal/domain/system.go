package domain

import (
	"time"
)

type SysOprLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OprName   string    `gorm:"size:100" json:"opr_name"`
	OprIp     string    `gorm:"size:64" json:"opr_ip"`
	OptAction string    `gorm:"size:64;index" json:"opt_action"`
	OptDesc   string    `gorm:"type:text" json:"opt_desc"`
	OptTime   time.Time `gorm:"index" json:"opt_time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
