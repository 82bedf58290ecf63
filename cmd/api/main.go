package main

import (
	"log"
	"time"

	httpadp "boveda-lols-backend/internal/adapter/http"
	"boveda-lols-backend/internal/adapter/repository/mysql"
	"boveda-lols-backend/internal/config"
	asistenciaDomain "boveda-lols-backend/internal/domain/asistencia"
	auditoriaDomain "boveda-lols-backend/internal/domain/auditoria"
	"boveda-lols-backend/internal/domain/catalogo"
	permisoDomain "boveda-lols-backend/internal/domain/permiso"
	"boveda-lols-backend/internal/domain/tabla"
	"boveda-lols-backend/internal/infrastructure/cache"
	"boveda-lols-backend/internal/infrastructure/db"
	asistenciauc "boveda-lols-backend/internal/usecase/asistencia"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"
	authuc "boveda-lols-backend/internal/usecase/auth"
	permisosuc "boveda-lols-backend/internal/usecase/permisos"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&catalogo.Empresa{}, &catalogo.Obra{}, &catalogo.Trabajador{},
		&catalogo.Documento{}, &catalogo.TipoDocumento{},
		&catalogo.EstadoAsistencia{}, &catalogo.TipoAusencia{},
		&catalogo.Rol{}, &catalogo.Usuario{},
		&asistenciaDomain.Asistencia{}, &permisoDomain.Permiso{},
		&auditoriaDomain.LogAuditoria{},
	); err != nil {
		log.Fatal(err)
	}

	registry, err := tabla.NewRegistry(catalogo.Descriptors()...)
	if err != nil {
		log.Fatal(err)
	}
	if err := registry.Validate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Printf("redis no disponible: %v (idempotencia deshabilitada)", err)
		rdb = nil
	}

	tablas := mysql.NewTablaRepository(gdb)
	logsRepo := mysql.NewLogRepository(gdb)

	rec := auditoriauc.NewRecorder(logsRepo, 256)
	defer rec.Close()
	audSvc := auditoriauc.NewService(logsRepo, tablas, rec)

	u := mysql.NewGormUoW(gdb)
	descAsist, ok := registry.Get("asistencia")
	if !ok {
		log.Fatal("registro sin modulo asistencia")
	}
	asistSvc := asistenciauc.NewService(u, tablas, descAsist, audSvc)
	defer asistSvc.Wait()

	permSvc := permisosuc.NewService(u, mysql.NewPermisoRepository(gdb))
	authSvc := authuc.NewService(mysql.NewUsuarioRepository(gdb), cfg.JWTSecret,
		time.Duration(cfg.JWTTTLHours)*time.Hour)

	e := httpadp.NewEcho(httpadp.Deps{
		Registry:   registry,
		Tablas:     tablas,
		Auditoria:  audSvc,
		Asistencia: asistSvc,
		Permisos:   permSvc,
		Auth:       authSvc,
		Redis:      rdb,
		IdempTTL:   time.Duration(cfg.IdempTTLSecs) * time.Second,
	})

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
